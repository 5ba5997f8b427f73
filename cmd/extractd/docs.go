package main

// General API documentation for swaggo. Regenerate the docs package with
// `swag init -g cmd/extractd/docs.go -o docs`.
//
// @title           extractd API
// @version         1.0
// @description     HTTP facade for a containerized document extraction engine.
//
// @BasePath  /
//
// @schemes http
