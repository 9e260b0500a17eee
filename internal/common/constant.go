// Package common contains shared constants and sentinel errors used across
// server and client components.
package common

// AuthorizationHeaderName carries "Bearer <token>" on protected requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token in the Authorization header.
const BearerPrefix = "Bearer "
