package api

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/pocket-arena/internal/constants"
	"github.com/ericogr/pocket-arena/internal/logging"
)

// gormKeys maps the untagged gorm.Model fields onto snake_case.
var gormKeys = map[string]string{
	"ID":        "id",
	"CreatedAt": "created_at",
	"UpdatedAt": "updated_at",
	"DeletedAt": "deleted_at",
}

// normalizeModelKeys recursively renames GORM model keys (ID, CreatedAt,
// UpdatedAt, DeletedAt) to snake_case so clients consistently receive
// snake_case keys.
func normalizeModelKeys(v interface{}) interface{} {
	switch vv := v.(type) {
	case map[string]interface{}:
		for k, val := range vv {
			vv[k] = normalizeModelKeys(val)
		}
		for from, to := range gormKeys {
			if val, ok := vv[from]; ok {
				vv[to] = val
				delete(vv, from)
			}
		}
		return vv
	case []interface{}:
		for i := range vv {
			vv[i] = normalizeModelKeys(vv[i])
		}
		return vv
	default:
		return v
	}
}

// MarshalIntoSnakeKeys marshals the given value into JSON, then decodes
// into an interface{} and normalizes model keys to snake_case.
func MarshalIntoSnakeKeys(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return normalizeModelKeys(out), nil
}

// writeModel responds with v after key normalization.
func writeModel(c *gin.Context, code int, v interface{}) {
	out, err := MarshalIntoSnakeKeys(v)
	if err != nil {
		logging.Error("failed to encode response", err, logging.Fields{constants.LogFieldPath: c.FullPath()})
		c.JSON(500, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	c.JSON(code, out)
}

// requestLogger emits one structured line per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logging.Debug("request", logging.Fields{
			"method":                   c.Request.Method,
			constants.LogFieldPath:     c.FullPath(),
			constants.JSONKeyStatus:    c.Writer.Status(),
			"duration_ms":              time.Since(start).Milliseconds(),
			constants.LogFieldRemoteIP: c.ClientIP(),
		})
	}
}
