package models

import "errors"

var ErrValidation = errors.New("invalid post data")
var ErrNotFound = errors.New("post is not found")
