// Package model defines the value objects exchanged with the submission
// client: reporter identity, violation details, and the submission outcome.
//
// UserInfo and ViolationInfo are constructed through validating constructors
// and treated as immutable values afterwards. Validation happens at
// construction time so that bad input is rejected before any network
// activity: an unrecognized gender token, a national ID that fails the
// checksum, or a malformed email never reaches the portal client.
//
// # National ID Checksum
//
// The identifier format is one uppercase letter followed by nine digits.
// The leading letter maps to a two-digit number (A=10 ... Z=33, with the
// historical exceptions I=34, O=35, W=32, X=30, Y=31, Z=33); the resulting
// eleven digits are weighted 1,9,8,7,6,5,4,3,2,1,1 and the weighted sum
// must be divisible by ten.
package model
