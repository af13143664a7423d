// Package password hashes and verifies login passwords with argon2id,
// serialized in PHC string format. Strength policy (length, character
// classes) is enforced by the engine before hashing, not here.
package password
