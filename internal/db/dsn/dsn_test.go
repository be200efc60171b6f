package dsn

import (
	"errors"
	"testing"

	"github.com/dirgraph/dirgraph/internal/config"
)

func TestCreate(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{
			name: "mysql",
			cfg: config.Config{DB: config.DB{
				GormEngine: "mysql",
				Host:       "db.local",
				Port:       3306,
				User:       "u",
				Password:   "p",
				Name:       "dirgraph",
				Extras:     "parseTime=True",
			}},
			want: "u:p@tcp(db.local:3306)/dirgraph?parseTime=True",
		},
		{
			name: "postgres",
			cfg: config.Config{DB: config.DB{
				GormEngine: "postgres",
				Host:       "db.local",
				Port:       5432,
				User:       "u",
				Password:   "p",
				Name:       "dirgraph",
				Extras:     "sslmode=disable",
			}},
			want: "host=db.local user=u password=p dbname=dirgraph port=5432 sslmode=disable",
		},
		{
			name: "sqlite uses name as path",
			cfg: config.Config{DB: config.DB{
				GormEngine: "sqlite",
				Name:       "file::memory:?cache=shared",
			}},
			want: "file::memory:?cache=shared",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Create(&tt.cfg); got != tt.want {
				t.Errorf("Create() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDialectorUnknownEngine(t *testing.T) {
	cfg := config.Config{DB: config.DB{GormEngine: "oracle"}}

	_, err := Dialector(&cfg)
	if !errors.Is(err, ErrUnknownEngine) {
		t.Errorf("Dialector() error = %v, want ErrUnknownEngine", err)
	}
}
