package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"aitravel/pkg/utils"
)

// pathUint parses a positive integer path parameter, answering 400 otherwise.
func pathUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(v), true
}

func pathDay(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return v, true
}
