package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sofraProject/foodDelivery-sub000/pkg/apperr"
	"github.com/sofraProject/foodDelivery-sub000/pkg/resp"
)

// respondError maps service errors onto the wire taxonomy. Anything
// unrecognized becomes an opaque 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		resp.Error(c, http.StatusNotFound, resp.KindNotFound, err.Error())
	case errors.Is(err, apperr.ErrInvalidInput):
		resp.Error(c, http.StatusBadRequest, resp.KindInvalidInput, err.Error())
	case errors.Is(err, apperr.ErrInvalidTransition):
		resp.Error(c, http.StatusConflict, resp.KindInvalidTransition, err.Error())
	case errors.Is(err, apperr.ErrForbidden):
		resp.Error(c, http.StatusForbidden, resp.KindForbidden, err.Error())
	case errors.Is(err, apperr.ErrUpstreamPayment):
		resp.Error(c, http.StatusBadGateway, resp.KindUpstreamPayment, err.Error())
	default:
		resp.ServerError(c, err)
	}
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		resp.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
