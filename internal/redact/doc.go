// Package redact removes secrets from issue records before they are pushed
// to a remote corpus service.
//
// Issue rationales and occurrence notes quote snapshot code, which can embed
// credentials. Detection uses regex heuristics covering common secret
// shapes: API key assignments, JWTs, private key blocks, AWS access key IDs
// and secret access keys, bearer tokens, and GitHub and Slack tokens.
package redact
