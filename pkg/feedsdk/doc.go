/*
Package feedsdk is the Go client for the profile feed service, and the home of
the wire types and error bodies the server itself writes.

# Client vs Session

  - Client: public endpoints (registration, login, health, and profile reads
    when the directory is public)
  - Session: everything that needs a token

	client := feedsdk.NewClient("http://localhost:8080")

	_, err := client.Register(ctx, feedsdk.RegisterRequest{
		Email:    "alice@example.com",
		Name:     "Alice",
		Password: "pw123",
	})

	session, err := client.Login(ctx, "alice@example.com", "pw123")

	item, err := session.PostStatus(ctx, "hello world")

A session holds a single opaque token. Logging in again from anywhere
replaces it, so older sessions for the same user start failing with
ErrInvalidToken.

# Errors

Every failure from the server decodes to *APIError. The predefined values
match on status and code, so errors.Is works:

	_, err := session.UpdateFeedItem(ctx, id, req)
	if errors.Is(err, feedsdk.ErrPermissionDenied) {
		// not the owner
	}

	var apiErr *feedsdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == feedsdk.ErrorCodeValidation {
		fmt.Println(apiErr.Details["email"])
	}
*/
package feedsdk
