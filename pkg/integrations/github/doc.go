// Package github describes GitHub repositories.
//
// # Overview
//
// Links of the form https://github.com/<owner>/<repo> are resolved against the
// public REST API (https://api.github.com/repos/<owner>/<repo>). A trailing
// ".git" on the repository name is dropped.
//
// # Card
//
//   - Title: full repository name ("octocat/Hello-World")
//   - Stats: Stars, Forks, Issues
//   - Footer: date of the last push
//
// # Rate Limiting
//
// Unauthenticated calls are limited to 60 per hour. A 403 carrying
// X-RateLimit-Remaining: 0 is reported as a rate-limit error rather than a
// generic network failure. No token is ever sent.
package github
