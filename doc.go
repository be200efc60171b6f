// Package main provides the entry point for the dirgraph directory import tool.
// It ingests user, group, and membership records from Google Workspace Directory
// and LDAP/Active Directory sources, reconciles them into a unified identity
// store persisted with gorm, and exports the result as a node/link graph
// structure for downstream visualisation.
package main
