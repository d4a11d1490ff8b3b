package domain

import (
	"errors"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound  = errors.New("data not found")
	ErrNoUpdatedData = errors.New("no fields provided for update")

	// * Communication errors.
	ErrBadRequest = errors.New("error parsing request")

	// * Authority errors.
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is not provided")
	ErrInvalidAuthorizationHeader = errors.New("authorization header format is invalid")
	ErrInvalidAuthorizationType   = errors.New("authorization type is not supported")
	ErrExpiredToken               = errors.New("access token has expired")
	ErrInvalidToken               = errors.New("access token is invalid")
	ErrForbidden                  = errors.New("user is forbidden to access the resource")

	// * Business errors.
	ErrEmptyCart           = errors.New("cart must contain at least one item")
	ErrInvalidCartItem     = errors.New("cart item must have a product id and a positive quantity")
	ErrProductNotFound     = errors.New("product not found")
	ErrCatalogUnavailable  = errors.New("catalog service unavailable")
	ErrInvalidOrderStatus  = errors.New("order status is not valid")
	ErrInvalidProductName  = errors.New("product name must not be empty")
	ErrInvalidProductPrice = errors.New("product price must be a non-negative number")
)
