// Package piifirewall provides a Go client for the PII Firewall Edge API,
// a remote service that detects and redacts personally identifiable
// information (emails, phone numbers, SSNs, credit cards, API keys, IBANs
// and more) in free-form text. All detection happens server-side; this
// package only builds requests, authenticates them and parses results.
//
// # Quick Start
//
//	client, err := piifirewall.NewClient(os.Getenv("PII_FIREWALL_API_KEY"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := client.RedactFast(context.Background(),
//		"Contact john@test.com at 555-1234")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Redacted) // Contact [EMAIL] at [PHONE_US]
//
// # Detection Modes
//
// Four operations are available, all sharing the same contract:
//
//   - [Client.RedactFast]: fast mode, placeholders like [EMAIL] (2-5ms).
//   - [Client.RedactFastMasked]: fast mode, PII replaced by asterisks.
//   - [Client.RedactDeep]: adds human names and addresses (5-15ms).
//   - [Client.RedactDeepMasked]: deep mode with asterisk masking.
//
// # Error Handling
//
// Every failure is an *[Error] carrying the HTTP status code, a message
// sourced from the response body, and a Retryable flag. The client never
// retries on its own; callers branch on Retryable or on the sentinel
// categories with errors.Is:
//
//	result, err := client.RedactFast(ctx, text)
//	if err != nil {
//		var apiErr *piifirewall.Error
//		if errors.As(err, &apiErr) && apiErr.Retryable {
//			// back off and try again
//		}
//		if errors.Is(err, piifirewall.ErrRateLimited) {
//			// quota exhausted, upgrade plan or wait
//		}
//	}
//
// Server errors (5xx) and transport failures (timeout, connection refused,
// DNS) are retryable. Authentication failures (401), oversized payloads
// (413) and rate limiting (429) are not: they require caller action.
//
// # Thread Safety
//
// A Client holds no per-call mutable state and is safe for concurrent use
// from multiple goroutines.
package piifirewall
