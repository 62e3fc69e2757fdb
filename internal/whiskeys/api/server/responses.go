package server

type AuthUserResponse struct {
	Token string `json:"token"`
}

type CreateUserResponse struct {
	Token string `json:"token"`
}
