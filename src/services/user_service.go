package services

import (
	"context"
	"errors"
	"strings"

	"Backend-Formgenie-007/src/database"
	"Backend-Formgenie-007/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// CreateUser registers a user with a bcrypt-hashed password.
func CreateUser(user *models.User) error {
	ctx := context.Background()
	userCollection := database.GetCollection(database.DBName, "users")

	user.Email = strings.ToLower(user.Email)
	if user.Role == "" {
		user.Role = "user"
	}

	count, err := userCollection.CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)

	result, err := userCollection.InsertOne(ctx, user)
	if err != nil {
		return err
	}
	user.ID = result.InsertedID.(primitive.ObjectID)
	user.Password = ""
	return nil
}

// GetUserByID ดึงข้อมูลผู้ใช้ตาม ID
func GetUserByID(id string) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrUserNotFound
	}

	ctx := context.Background()
	userCollection := database.GetCollection(database.DBName, "users")

	var user models.User
	err = userCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail ดึงข้อมูลผู้ใช้ตาม email
func GetUserByEmail(email string) (*models.User, error) {
	ctx := context.Background()
	userCollection := database.GetCollection(database.DBName, "users")

	var user models.User
	err := userCollection.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
