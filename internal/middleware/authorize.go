package middleware

import (
	"net/http"

	"salestrack/internal/apierror"
	"salestrack/internal/policy"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// actionFor maps the HTTP verb onto the abstract policy action. A GET with a
// path id is a retrieve, without one a list.
func actionFor(c *gin.Context) policy.Action {
	switch c.Request.Method {
	case http.MethodPost:
		return policy.ActionCreate
	case http.MethodPut, http.MethodPatch:
		return policy.ActionUpdate
	case http.MethodDelete:
		return policy.ActionDelete
	default:
		if c.Param("id") != "" {
			return policy.ActionRetrieve
		}
		return policy.ActionList
	}
}

// Authorize enforces a route-level policy rule. Object-level facts (ownership)
// are not known here; rules needing them run in the service after the load.
func Authorize(rule policy.Rule) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := policy.Actor{}
		if claims := GetClaims(c); claims != nil {
			actor.Authenticated = true
			actor.UserID, _ = uuid.Parse(claims.UserID)
		}
		if !rule(actionFor(c), actor, policy.Resource{}) {
			// Anonymous callers have an authentication problem, not a
			// permission one.
			if !actor.Authenticated {
				c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("authentication required"))
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("you do not have permission to perform this action"))
			return
		}
		c.Next()
	}
}
