package main

import "github.com/gofiber/fiber/v2"

const MsgOk = "Ok"

var ErrInvalidRequestBody = fiber.Map{"msg": "Invalid request body."}
var ErrMissingCredentials = fiber.Map{"msg": "Email and password are required."}
var ErrInternalServerError = fiber.Map{"msg": "Internal server error."}
var ErrSearchDisabled = fiber.Map{"msg": "Search is disabled."}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

type MessageResponse struct {
	Msg string `json:"msg"`
}

type ListResponse struct {
	Msg    string      `json:"msg"`
	Result interface{} `json:"result"`
}
