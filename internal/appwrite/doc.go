// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package appwrite is the client for the remote account service.
//
// It speaks the Appwrite REST account API and exposes exactly the four calls
// authapp needs. Each call is one HTTPS round trip. There is no local
// validation, no retry and no caching: the remote service is the single
// authority on accounts and sessions.
//
// # Key Types
//
//   - Client: issues requests with the project, platform and session headers
//   - User: read-only snapshot of the signed-in account
//   - Session: metadata of a newly created session
//   - RemoteError: the single error kind every call returns
//
// # Sessions
//
// The remote service identifies a session by a cookie. Non-browser clients
// receive it in the X-Fallback-Cookies response header and send it back in
// the same header. The Client stores it in a sessionstore.Store so that the
// store decides whether a session outlives the process.
//
// # Usage
//
//	client, err := appwrite.NewClient(appwrite.Config{
//	    Endpoint:  appwrite.DefaultEndpoint,
//	    ProjectID: appwrite.DefaultProjectID,
//	    Platform:  appwrite.DefaultPlatform,
//	    Store:     sessionstore.NewMemory(),
//	})
//	session, err := client.CreateEmailPasswordSession(ctx, email, password)
//	user, err := client.GetCurrentUser(ctx)
package appwrite
