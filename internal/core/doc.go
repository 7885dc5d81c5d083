// Package core provides the business logic for user management.
//
// This package holds all domain logic independent of the HTTP layer: the
// user model, the field table that validates it, the CSV import pipeline and
// the persistence gateway.
//
// # Field Table
//
// [UserFields] lists every attribute with its validation rule and message.
// CSV header binding, positional binding and JSON input all go through
// [ValidateUser], so a record is accepted or rejected the same way whatever
// its source.
//
// # CSV Import
//
// [ParseUsers] binds a file by header first and falls back to positional
// binding when the header does not describe a user or a line has the wrong
// shape. [Service.ImportCSV] then saves the batch in one transaction through
// [UserStore.SaveAll]; imports are bounded by an [ImportLimiter].
//
// # Error Handling
//
// Failures are reported as Go values, classified by the caller with
// errors.Is and errors.As:
//
//   - [ErrUserNotFound]: no user has the requested id
//   - [ValidationErrors]: one or more fields failed their rule
//   - [*IntegrityError]: the store rejected a write (duplicate email or SSN)
//   - [ErrUnsupportedFileFormat]: no strategy could bind the upload
//   - [*FileTooLargeError]: the upload exceeded the size limit
//   - [ErrTooManyImports]: all import slots are busy
package core
