// Package main provides the entry point of shelter-admin, the administration
// service of an animal shelter. Staff accounts carry one of three roles and
// every page and API call passes a server side guard that resolves the
// session, re-checks the account and consults the permission matrix.
package main
