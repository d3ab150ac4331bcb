package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/usersphere/internal/models"
	"github.com/sbilibin2017/usersphere/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestSearchUsersHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		target       string
		mockSetup    func(m *MockUserSearcher)
		expectedCode int
		checkBody    func(t *testing.T, resp Response)
	}{
		{
			name:   "match",
			target: "/users/search?q=john",
			mockSetup: func(m *MockUserSearcher) {
				m.EXPECT().
					Search(gomock.Any(), "john").
					Return([]models.UserDB{
						{ID: 1, Name: "John Doe", Email: "john@example.com", IsActive: true},
					}, nil)
			},
			expectedCode: http.StatusOK,
			checkBody: func(t *testing.T, resp Response) {
				assert.True(t, resp.Success)
				assert.Equal(t, "Search results for: john", resp.Message)
				assert.NotNil(t, resp.Count)
				assert.Equal(t, 1, *resp.Count)
			},
		},
		{
			name:   "no match",
			target: "/users/search?q=nobody",
			mockSetup: func(m *MockUserSearcher) {
				m.EXPECT().
					Search(gomock.Any(), "nobody").
					Return(nil, nil)
			},
			expectedCode: http.StatusOK,
			checkBody: func(t *testing.T, resp Response) {
				assert.True(t, resp.Success)
				assert.NotNil(t, resp.Count)
				assert.Equal(t, 0, *resp.Count)
			},
		},
		{
			name:   "missing query",
			target: "/users/search",
			mockSetup: func(m *MockUserSearcher) {
				m.EXPECT().
					Search(gomock.Any(), "").
					Return(nil, services.ErrEmptySearchQuery)
			},
			expectedCode: http.StatusBadRequest,
			checkBody: func(t *testing.T, resp Response) {
				assert.Equal(t, "Search query required", resp.Error)
				assert.Equal(t, "Please provide a search query using ?q=search_term", resp.Message)
			},
		},
		{
			name:   "internal server error",
			target: "/users/search?q=john",
			mockSetup: func(m *MockUserSearcher) {
				m.EXPECT().
					Search(gomock.Any(), "john").
					Return(nil, errors.New("database failure"))
			},
			expectedCode: http.StatusInternalServerError,
			checkBody: func(t *testing.T, resp Response) {
				assert.Equal(t, "Internal server error", resp.Error)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockUserSearcher(ctrl)
			tt.mockSetup(mockSvc)

			handler := NewSearchUsersHandler(mockSvc)

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var resp Response
			assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			tt.checkBody(t, resp)
		})
	}
}
