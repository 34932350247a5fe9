package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"Backend-Formgenie-007/src/database"
	"Backend-Formgenie-007/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleUserInfo represents the user information from Google
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// GetGoogleOAuthConfig returns the Google OAuth2 configuration. The forms
// scope is what lets Finalize publish on the user's behalf.
func GetGoogleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("GOOGLE_REDIRECT"),
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
			"https://www.googleapis.com/auth/forms.body",
		},
		Endpoint: google.Endpoint,
	}
}

// GetGoogleUserInfo retrieves user information from Google using the access token
func GetGoogleUserInfo(accessToken string) (*GoogleUserInfo, error) {
	url := "https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + accessToken

	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get user info: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %v", err)
	}

	var userInfo GoogleUserInfo
	if err := json.Unmarshal(body, &userInfo); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user info: %v", err)
	}

	return &userInfo, nil
}

// ProcessGoogleLogin exchanges the authorization code, upserts the user and
// stores the Forms-scoped token on the user document so Finalize can use it.
func ProcessGoogleLogin(code string) (*models.User, error) {
	config := GetGoogleOAuthConfig()

	token, err := config.Exchange(context.Background(), code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %v", err)
	}

	userInfo, err := GetGoogleUserInfo(token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %v", err)
	}

	ctx := context.Background()
	userCollection := database.GetCollection(database.DBName, "users")
	email := strings.ToLower(userInfo.Email)

	after := options.After
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(after)
	update := bson.M{
		"$set": bson.M{
			"googleToken": token,
			"name":        userInfo.Name,
		},
		"$setOnInsert": bson.M{
			"email": email,
			"role":  "user",
		},
	}

	var user models.User
	if err := userCollection.FindOneAndUpdate(ctx, bson.M{"email": email}, update, opts).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to upsert google user: %v", err)
	}

	return &user, nil
}

// RefreshGoogleToken refreshes an expired credential and persists the new
// token. Returns ErrGoogleAuthRequired when the user never connected Google.
func RefreshGoogleToken(ctx context.Context, user *models.User) (*oauth2.Token, error) {
	if user.GoogleToken == nil {
		return nil, models.ErrGoogleAuthRequired
	}
	if user.GoogleToken.Valid() {
		return user.GoogleToken, nil
	}

	source := GetGoogleOAuthConfig().TokenSource(ctx, user.GoogleToken)
	token, err := source.Token()
	if err != nil {
		return nil, models.ErrGoogleAuthExpired
	}

	userCollection := database.GetCollection(database.DBName, "users")
	_, err = userCollection.UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"googleToken": token}},
	)
	if err != nil {
		return nil, err
	}
	user.GoogleToken = token
	return token, nil
}
