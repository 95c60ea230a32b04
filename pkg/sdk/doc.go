// Package sdk is a Go client for the wikichat HTTP API.
//
// Basic usage:
//
//	client := sdk.New("http://localhost:8000", sdk.WithAPIKey("secret"))
//
//	created, err := client.AddDocument(ctx, "doc-1", "some text", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	answer, err := client.Search(ctx, "What albums did he release?", 5)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(answer.Summary)
//
// All errors returned by the server carry the HTTP status and the API
// error code; check them with errors.As on *sdk.APIError, or use
// errors.Is with the exported sentinels.
package sdk
