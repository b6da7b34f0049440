package repository

import (
	"context"
	"errors"
)

// Keys of the JSON blobs the agent keeps in local storage.
const (
	KeyCart            = "user_cart_data"
	KeyShippingAddress = "shippingAddress"
	KeyUserProfile     = "userProfile"
	KeyUserToken       = "userToken"
	KeyAuthToken       = "authToken"
	KeyToken           = "token"
)

// TokenKeys lists the credential keys in lookup order.
var TokenKeys = []string{KeyUserToken, KeyAuthToken, KeyToken}

// SessionKeys lists every key owned by a signed-in session.
var SessionKeys = []string{KeyCart, KeyShippingAddress, KeyUserProfile, KeyUserToken, KeyAuthToken, KeyToken}

var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore persists string values (JSON documents) by key.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, keys ...string) error
}
