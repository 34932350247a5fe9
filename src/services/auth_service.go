package services

import (
	"context"
	"errors"
	"strings"

	"Backend-Formgenie-007/src/database"
	"Backend-Formgenie-007/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

func AuthenticateUser(email, password string) (*models.User, error) {
	ctx := context.Background()
	userCollection := database.GetCollection(database.DBName, "users")

	var dbUser models.User
	err := userCollection.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&dbUser)
	if err != nil {
		return nil, errors.New("Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(dbUser.Password), []byte(password)); err != nil {
		return nil, errors.New("Invalid email or password")
	}

	result := &models.User{
		ID:    dbUser.ID,
		Name:  dbUser.Name,
		Email: dbUser.Email,
		Role:  dbUser.Role,
	}
	return result, nil
}
