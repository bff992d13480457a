// Package lib holds supporting modules that sit outside the request layers:
// background job processing (asynq over Redis) and the transactional email
// client (Resend).
package lib
