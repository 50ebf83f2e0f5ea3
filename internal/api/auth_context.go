package api

import (
	"github.com/crossgenio/crossgen/internal/auth"
	"github.com/crossgenio/crossgen/internal/middleware"
	"github.com/gin-gonic/gin"
)

func authClaims(c *gin.Context) *auth.Claims {
	return middleware.GetAuthUser(c)
}
