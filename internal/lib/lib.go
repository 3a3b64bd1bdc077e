// Package lib groups integrations that are not a layer of their own:
// background jobs on Redis (asynq) in lib/job and transactional email
// (Resend) in lib/email.
package lib
