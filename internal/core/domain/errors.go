package domain

import "errors"

var (
	ErrQuestionNotFound   = errors.New("question not found")
	ErrInvalidQuestionID  = errors.New("invalid question id")
	ErrInvalidChoice      = errors.New("invalid choice for this question")
	ErrUserNotFound       = errors.New("user not found")
	ErrGroupNotFound      = errors.New("group not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrGroupNameTaken     = errors.New("group name already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or revoked access token")
	ErrForbidden          = errors.New("you do not have permission to perform this action")
	ErrValidation         = errors.New("validation failed")
)
