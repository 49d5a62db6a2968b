package firebase

import (
	"context"
	"errors"
	"fmt"

	"roktoSheba/domain"
	"roktoSheba/pkg/obs"

	fb "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/pobyzaarif/goshortcute"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

const firebaseScope = "https://www.googleapis.com/auth/firebase"

// IDTokenClient is the part of the Firebase auth client the verifier needs.
type IDTokenClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// TokenVerifier turns a Firebase ID token into the caller's identity.
type TokenVerifier struct {
	client IDTokenClient
}

func NewTokenVerifier(client IDTokenClient) *TokenVerifier {
	return &TokenVerifier{
		client: client,
	}
}

func (v *TokenVerifier) VerifyIDToken(ctx context.Context, idToken string) (domain.Identity, error) {
	ctx, span := obs.Start(ctx, "firebase.VerifyIDToken")
	defer span.End()

	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		span.RecordError(err)
		return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	if token.UID == "" {
		return domain.Identity{}, fmt.Errorf("%w: empty subject", domain.ErrInvalidToken)
	}
	email, _ := token.Claims["email"].(string)
	if email == "" {
		return domain.Identity{}, fmt.Errorf("%w: no email claim", domain.ErrInvalidToken)
	}

	return domain.Identity{UID: token.UID, Email: email}, nil
}

// NewAuthClient builds a Firebase auth client from a base64 encoded service
// account JSON. The client caches Google's signing keys itself.
func NewAuthClient(ctx context.Context, encoded string) (*auth.Client, error) {
	serviceKey, projectID, err := decodeServiceKey(ctx, encoded)
	if err != nil {
		return nil, err
	}

	app, err := fb.NewApp(ctx, &fb.Config{ProjectID: projectID}, option.WithCredentialsJSON(serviceKey))
	if err != nil {
		return nil, fmt.Errorf("failed to init firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init firebase auth: %w", err)
	}

	return client, nil
}

// ProjectIDFromServiceKey reads the project id out of a base64 encoded
// service account JSON.
func ProjectIDFromServiceKey(ctx context.Context, encoded string) (string, error) {
	_, projectID, err := decodeServiceKey(ctx, encoded)
	return projectID, err
}

func decodeServiceKey(ctx context.Context, encoded string) ([]byte, string, error) {
	decoded := goshortcute.StringtoBase64Decode(encoded)
	if len(decoded) == 0 {
		return nil, "", errors.New("invalid firebase service key encoding")
	}
	serviceKey := []byte(decoded)

	creds, err := google.CredentialsFromJSON(ctx, serviceKey, firebaseScope)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse firebase service key: %w", err)
	}
	if creds.ProjectID == "" {
		return nil, "", errors.New("firebase service key has no project id")
	}

	return serviceKey, creds.ProjectID, nil
}
