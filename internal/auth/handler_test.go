package auth

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/frahmantamala/access-management/internal"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

var _ = ginkgo.Describe("AuthMiddleware", func() {
	var (
		handler  *Handler
		mockRepo *mockUserRepository
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		tokenGen := NewJWTTokenGenerator(
			"test-access-secret-0123456789abcdef",
			"test-refresh-secret-0123456789abcdef",
			15*time.Minute,
			24*time.Hour,
		)
		handler = NewHandler(NewService(mockRepo, tokenGen, bcrypt.DefaultCost))
	})

	ginkgo.It("should store both the user and the plain id in the context", func() {
		tokens, err := handler.Service.Authenticate(LoginDTO{
			Email:    "john@acmecorp.com",
			Password: "correct_password",
		})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		var seenUser *User
		var seenID string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if u, ok := UserFromContext(r.Context()); ok {
				seenUser = u
			}
			seenID = internal.UserIDFromContext(r.Context())
			w.WriteHeader(http.StatusNoContent)
		})

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
		rec := httptest.NewRecorder()
		handler.AuthMiddleware(next).ServeHTTP(rec, req)

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNoContent))
		gomega.Expect(seenUser).ToNot(gomega.BeNil())
		gomega.Expect(seenUser.ID).To(gomega.Equal("user-john"))
		gomega.Expect(seenID).To(gomega.Equal("user-john"))
	})

	ginkgo.It("should reject a request without a bearer token", func() {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ginkgo.Fail("next handler must not run")
		})

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		rec := httptest.NewRecorder()
		handler.AuthMiddleware(next).ServeHTTP(rec, req)

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
	})
})
