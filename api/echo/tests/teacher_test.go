package tests

import (
	"net/http"
	"testing"
)

func Test_teacherApi_query(t *testing.T) {
	resetDB()

	_, stdUsr := createStudent(t, "Ann", "Lee", "ann.lee@test.cd", "pw123456", 20)
	tch1, tchUsr1 := createTeacher(t, "John", "Keating", "keating@test.cd", "pw123456")
	tch2, _ := createTeacher(t, "Jane", "Doe", "jane.doe@test.cd", "pw123456")

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Teacher required", token: getToken(t, stdUsr), wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
		{
			name: "Get all (newest first)", token: getToken(t, tchUsr1), wantCode: http.StatusOK,
			wantData: marchallList(t, tch2, tch1),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		tt.path = "/v1/teachers"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_teacherApi_retrieve(t *testing.T) {
	resetDB()

	_, stdUsr := createStudent(t, "Ann", "Lee", "ann.lee@test.cd", "pw123456", 20)
	tch1, tchUsr1 := createTeacher(t, "John", "Keating", "keating@test.cd", "pw123456")

	tests := []httpTest{
		{name: "Auth required", path: "/v1/teachers/" + tch1.ID, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Teacher required", path: "/v1/teachers/" + tch1.ID, token: getToken(t, stdUsr),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "Get one", path: "/v1/teachers/" + tch1.ID, token: getToken(t, tchUsr1),
			wantCode: http.StatusOK, wantData: marchallObj(t, tch1),
		},
		{
			name: "Get unknown", path: "/v1/teachers/lol", token: getToken(t, tchUsr1),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
