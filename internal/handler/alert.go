package handler

import (
	"github.com/labstack/echo/v4"
)

const applicationName = "flatchoresApp"

// Alert headers tell clients what a mutation did, for display.
const (
	HeaderAlert  = "X-" + applicationName + "-alert"
	HeaderError  = "X-" + applicationName + "-error"
	HeaderParams = "X-" + applicationName + "-params"
)

// AlertHeaders lists the headers browsers must be allowed to read.
var AlertHeaders = []string{HeaderAlert, HeaderError, HeaderParams, echo.HeaderLocation}

// setAlert marks a successful mutation: flatchoresApp.badge.created, param = id.
func setAlert(c echo.Context, entityName, action, param string) {
	header := c.Response().Header()
	header.Set(HeaderAlert, applicationName+"."+entityName+"."+action)
	header.Set(HeaderParams, param)
}

// setFailureAlert marks a rejected mutation: error.idexists, param = entity name.
func setFailureAlert(c echo.Context, entityName, errorKey string) {
	header := c.Response().Header()
	header.Set(HeaderError, "error."+errorKey)
	header.Set(HeaderParams, entityName)
}
