package model

import "errors"

var ErrorValidation = errors.New("validation failed")
var ErrorInvalidUsernameOrPassword = errors.New("invalid username or password")
var ErrorInvalidToken = errors.New("invalid or expired token")
var ErrorUserNotFound = errors.New("user not found")
var ErrorPostNotFound = errors.New("post not found")
var ErrorCommentNotFound = errors.New("comment not found")
var ErrorDuplicateUser = errors.New("user already exists with this email or username")
var ErrorSelfFollow = errors.New("cannot follow yourself")
