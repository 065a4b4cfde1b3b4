// Package google implements the Google OAuth2 authorization code flow and the
// per-user credential store.
//
// AuthFlow builds the consent URL, exchanges the returned code for a token,
// resolves the user's profile through the userinfo API and stores the token
// under the Google user id. TokenStore is the seam for alternative storage;
// MemoryTokenStore keeps tokens for the lifetime of the process.
package google
