// Package services holds the business logic of the contacts API: the
// authenticator (UserService) and the ownership-scoped contact and address
// services. Services validate their inputs, run repositories obtained from a
// repomanager.RepositoryManager and report failures as the sentinels of
// package common.
package services
