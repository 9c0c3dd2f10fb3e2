package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	emaildomain "atix-backend/internal/email/domain"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const defaultPageSize = 200

type Service struct {
	clientID     string
	clientSecret string
}

func NewService(clientID, clientSecret string) *Service {
	return &Service{
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// newGmailService creates a Gmail API client from a stored refresh token
func (s *Service) newGmailService(ctx context.Context, refreshToken string) (*gmail.Service, error) {
	config := &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		Endpoint:     google.Endpoint,
	}

	token := &oauth2.Token{
		RefreshToken: refreshToken,
		Expiry:       time.Now(), // force an access-token refresh on first use
	}

	client := oauth2.NewClient(ctx, config.TokenSource(ctx, token))

	srv, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %w", err)
	}

	return srv, nil
}

// ListMessageIDs pages through the user's messages and returns up to max
// message ids, optionally restricted to messages received after the given
// date. Paging stops as soon as the cap is reached or ctx is cancelled.
func (s *Service) ListMessageIDs(ctx context.Context, refreshToken string, after *time.Time, max int) ([]string, error) {
	srv, err := s.newGmailService(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	q := ""
	if after != nil {
		// Gmail query syntax: after:YYYY/MM/DD
		q = "after:" + after.Format("2006/01/02")
	}

	var ids []string
	pageToken := ""
	for {
		if err := ctx.Err(); err != nil {
			return ids, err
		}

		call := srv.Users.Messages.List("me").MaxResults(defaultPageSize).Q(q)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		listRes, err := call.Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("unable to list messages: %w", err)
		}

		for _, m := range listRes.Messages {
			ids = append(ids, m.Id)
			if len(ids) >= max {
				return ids, nil
			}
		}

		pageToken = listRes.NextPageToken
		if pageToken == "" {
			return ids, nil
		}
	}
}

// GetMessage fetches a full message and extracts the fields the importer
// needs: sender, subject, received date and a plain-text (or HTML) body.
func (s *Service) GetMessage(ctx context.Context, refreshToken, id string) (*emaildomain.SourceMessage, error) {
	srv, err := s.newGmailService(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	msg, err := srv.Users.Messages.Get("me", id).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to get message %s: %w", id, err)
	}

	return convertMessage(msg), nil
}

func convertMessage(msg *gmail.Message) *emaildomain.SourceMessage {
	var headers []*gmail.MessagePartHeader
	if msg.Payload != nil {
		headers = msg.Payload.Headers
	}

	sender := getHeader(headers, "From")
	if sender == "" {
		sender = getHeader(headers, "Sender")
	}

	subject := getHeader(headers, "Subject")
	if subject == "" {
		subject = "(no subject)"
	}

	receivedAt := time.Now()
	if dateHeader := getHeader(headers, "Date"); dateHeader != "" {
		if t, err := parseDateHeader(dateHeader); err == nil {
			receivedAt = t
		}
	}

	text, html := extractBody(msg.Payload)
	body := text
	if body == "" {
		body = html
	}
	if body == "" {
		body = msg.Snippet
	}

	return &emaildomain.SourceMessage{
		ExternalID: msg.Id,
		Sender:     sender,
		Subject:    subject,
		Body:       body,
		ReceivedAt: receivedAt,
	}
}

func getHeader(headers []*gmail.MessagePartHeader, name string) string {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

func parseDateHeader(value string) (time.Time, error) {
	formats := []string{
		time.RFC1123Z,
		time.RFC1123,
		"Mon, 2 Jan 2006 15:04:05 -0700",
		"Mon, 2 Jan 2006 15:04:05 -0700 (MST)",
		"2 Jan 2006 15:04:05 -0700",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date header %q", value)
}

// extractBody walks the MIME tree collecting text/plain and text/html parts
func extractBody(part *gmail.MessagePart) (text, html string) {
	if part == nil {
		return "", ""
	}

	if part.Body != nil && part.Body.Data != "" {
		decoded, err := decodeBase64URL(part.Body.Data)
		if err == nil {
			switch part.MimeType {
			case "text/plain":
				text += decoded
			case "text/html":
				html += decoded
			}
		}
	}

	for _, p := range part.Parts {
		t, h := extractBody(p)
		text += t
		html += h
	}

	return text, html
}

func decodeBase64URL(data string) (string, error) {
	decoded, err := base64.URLEncoding.WithPadding(base64.NoPadding).DecodeString(strings.TrimRight(data, "="))
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
