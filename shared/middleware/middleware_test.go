package middleware

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type createRequest struct {
	Name *string `validate:"required"`
	Age  *int    `validate:"omitempty,gte=0"`
}

func TestValidateRequest(t *testing.T) {
	name := "Carol"
	negative := -1
	tests := []struct {
		name      string
		req       createRequest
		wantField string
		wantTag   string
	}{
		{name: "valid", req: createRequest{Name: &name}},
		{name: "missing name", req: createRequest{}, wantField: "Name", wantTag: "required"},
		{name: "negative age", req: createRequest{Name: &name, Age: &negative}, wantField: "Age", wantTag: "gte"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateRequest(tt.req)
			if tt.wantField == "" {
				if errs != nil {
					t.Fatalf("expected no errors, got %+v", errs)
				}
				return
			}
			if len(errs) != 1 {
				t.Fatalf("expected 1 error, got %+v", errs)
			}
			if errs[0].Field != tt.wantField || errs[0].Type != tt.wantTag {
				t.Errorf("expected %s/%s, got %s/%s", tt.wantField, tt.wantTag, errs[0].Field, errs[0].Type)
			}
		})
	}
}

func TestRespondWithErrorHasEmptyBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/missing", func(c *gin.Context) { RespondWithError(c, http.StatusNotFound) })
	r.GET("/invalid", func(c *gin.Context) {
		RespondWithValidationError(c, []ValidationError{{Field: "Name", Message: "This field is required", Type: "required"}})
	})

	for path, code := range map[string]int{"/missing": http.StatusNotFound, "/invalid": http.StatusBadRequest} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)
		if w.Code != code {
			t.Errorf("%s: expected status %d, got %d", path, code, w.Code)
		}
		if w.Body.Len() != 0 {
			t.Errorf("%s: expected empty body, got %q", path, w.Body.String())
		}
	}
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(LoggingMiddleware())
	r.GET("/users/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/users/7?verbose=1", nil)
	r.ServeHTTP(w, req)

	line := buf.String()
	if !strings.Contains(line, "GET /users/7?verbose=1 418") {
		t.Errorf("unexpected log line: %q", line)
	}
}
