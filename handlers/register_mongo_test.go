package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"levelup/database"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRegister(mt *mtest.T, req RegisterRequest) *httptest.ResponseRecorder {
	mt.Helper()
	database.Applicants = mt.Coll

	body, err := json.Marshal(req)
	if err != nil {
		mt.Fatalf("marshal request: %v", err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	Register(c)
	return w
}

type conflictResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// A submission with an already registered email gets a field-level 409 and
// writes nothing.
func TestRegisterDuplicateEmail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("pre-check rejects and does not insert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "levelup.applicants", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "email", Value: "aarav@example.com"},
		}))

		req := validRequest()
		req.Reference = ""
		w := performRegister(mt, req)

		if w.Code != http.StatusConflict {
			mt.Fatalf("status = %d, want %d", w.Code, http.StatusConflict)
		}
		var resp conflictResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			mt.Fatalf("decode response: %v", err)
		}
		if resp.Fields["email"] == "" {
			mt.Fatalf("expected a field error on email, got %v", resp.Fields)
		}
		for _, evt := range mt.GetAllStartedEvents() {
			if evt.CommandName == "insert" {
				mt.Fatal("a second document was inserted for a duplicate email")
			}
		}
	})
}

// When two submissions race past the pre-check, the unique index rejects the
// loser and the 409 names the index that fired.
func TestRegisterDuplicateKeyRace(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	run := func(indexMsg, wantField string) func(mt *mtest.T) {
		return func(mt *mtest.T) {
			mt.AddMockResponses(
				mtest.CreateCursorResponse(0, "levelup.applicants", mtest.FirstBatch),
				mtest.CreateCursorResponse(0, "levelup.applicants", mtest.FirstBatch),
				mtest.CreateWriteErrorsResponse(mtest.WriteError{
					Code:    11000,
					Message: indexMsg,
				}),
			)

			req := validRequest()
			req.Reference = ""
			w := performRegister(mt, req)

			if w.Code != http.StatusConflict {
				mt.Fatalf("status = %d, want %d", w.Code, http.StatusConflict)
			}
			var resp conflictResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				mt.Fatalf("decode response: %v", err)
			}
			if resp.Fields[wantField] == "" {
				mt.Fatalf("expected a field error on %q, got %v", wantField, resp.Fields)
			}
		}
	}

	mt.Run("email index", run(
		`E11000 duplicate key error collection: levelup.applicants index: email_1 dup key: { email: "aarav@example.com" }`,
		"email",
	))
	mt.Run("phone index", run(
		`E11000 duplicate key error collection: levelup.applicants index: phone_1 dup key: { phone: "9876543210" }`,
		"phone",
	))
}
