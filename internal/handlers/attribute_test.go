package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/gw-recipe-api/internal/models"
	"github.com/sbilibin2017/gw-recipe-api/internal/services"
)

func TestListAttributesHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockAttributeManager(ctrl)
	attrs := []models.AttributeDB{{ID: 2, Name: "Vegan"}, {ID: 1, Name: "Dessert"}}

	tests := []struct {
		name       string
		query      string
		mockSetup  func()
		wantStatus int
		wantBody   string
	}{
		{
			name: "all",
			mockSetup: func() {
				mockSvc.EXPECT().List(gomock.Any(), testUserID, models.AttributeFilter{}).Return(attrs, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `[{"id":2,"name":"Vegan"},{"id":1,"name":"Dessert"}]`,
		},
		{
			name:  "assigned only",
			query: "?assigned_only=1",
			mockSetup: func() {
				mockSvc.EXPECT().List(gomock.Any(), testUserID, models.AttributeFilter{AssignedOnly: true}).Return(attrs[:1], nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `[{"id":2,"name":"Vegan"}]`,
		},
		{
			name:  "zero means no restriction",
			query: "?assigned_only=0",
			mockSetup: func() {
				mockSvc.EXPECT().List(gomock.Any(), testUserID, models.AttributeFilter{}).Return([]models.AttributeDB{}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `[]`,
		},
		{
			name:       "non-integer flag",
			query:      "?assigned_only=yes",
			mockSetup:  func() {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid input.","fields":{"assigned_only":["A valid integer is required."]}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			w := httptest.NewRecorder()
			NewListAttributesHandler(mockSvc).ServeHTTP(w, newRequest(http.MethodGet, "/api/recipe/tags"+tt.query, "", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestCreateAttributeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockAttributeManager(ctrl)

	t.Run("success", func(t *testing.T) {
		mockSvc.EXPECT().Create(gomock.Any(), testUserID, "Cabbage").Return(&models.AttributeDB{ID: 7, Name: "Cabbage"}, nil)

		w := httptest.NewRecorder()
		NewCreateAttributeHandler(mockSvc).ServeHTTP(w, newRequest(http.MethodPost, "/api/recipe/ingredients", "", map[string]string{"name": "Cabbage"}))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"id":7,"name":"Cabbage"}`, w.Body.String())
	})

	t.Run("missing name", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewCreateAttributeHandler(mockSvc).ServeHTTP(w, newRequest(http.MethodPost, "/api/recipe/ingredients", "", map[string]string{}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid input.","fields":{"name":["This field is required."]}}`, w.Body.String())
	})

	t.Run("blank name", func(t *testing.T) {
		for _, name := range []string{"", "  "} {
			w := httptest.NewRecorder()
			NewCreateAttributeHandler(mockSvc).ServeHTTP(w, newRequest(http.MethodPost, "/api/recipe/ingredients", "", map[string]string{"name": name}))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error":"Invalid input.","fields":{"name":["This field may not be blank."]}}`, w.Body.String())
		}
	})
}

func TestUpdateAttributeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockAttributeManager(ctrl)

	tests := []struct {
		name       string
		partial    bool
		id         string
		body       any
		mockSetup  func()
		wantStatus int
		wantBody   string
	}{
		{
			name: "put",
			id:   "3",
			body: map[string]string{"name": "New tag name"},
			mockSetup: func() {
				mockSvc.EXPECT().Update(gomock.Any(), testUserID, int64(3), "New tag name").
					Return(&models.AttributeDB{ID: 3, Name: "New tag name"}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"id":3,"name":"New tag name"}`,
		},
		{
			name:       "put without name",
			id:         "3",
			body:       map[string]string{},
			mockSetup:  func() {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid input.","fields":{"name":["This field is required."]}}`,
		},
		{
			name:    "patch without name",
			partial: true,
			id:      "3",
			body:    map[string]string{},
			mockSetup: func() {
				mockSvc.EXPECT().Get(gomock.Any(), testUserID, int64(3)).
					Return(&models.AttributeDB{ID: 3, Name: "Old"}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"id":3,"name":"Old"}`,
		},
		{
			name:       "patch blank name",
			partial:    true,
			id:         "3",
			body:       map[string]string{"name": ""},
			mockSetup:  func() {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid input.","fields":{"name":["This field may not be blank."]}}`,
		},
		{
			name:    "other user's row",
			partial: true,
			id:      "4",
			body:    map[string]string{"name": "x"},
			mockSetup: func() {
				mockSvc.EXPECT().Update(gomock.Any(), testUserID, int64(4), "x").Return(nil, services.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Not found."}`,
		},
		{
			name:       "bad id",
			id:         "abc",
			body:       map[string]string{"name": "x"},
			mockSetup:  func() {},
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Not found."}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			w := httptest.NewRecorder()
			NewUpdateAttributeHandler(mockSvc, tt.partial).ServeHTTP(w, newRequest(http.MethodPut, "/api/recipe/tags/"+tt.id, tt.id, tt.body))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestDeleteAttributeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockAttributeManager(ctrl)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "deleted", wantStatus: http.StatusNoContent},
		{name: "missing", err: services.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "failure", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc.EXPECT().Delete(gomock.Any(), testUserID, int64(5)).Return(tt.err)

			w := httptest.NewRecorder()
			NewDeleteAttributeHandler(mockSvc).ServeHTTP(w, newRequest(http.MethodDelete, "/api/recipe/tags/5", "5", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
