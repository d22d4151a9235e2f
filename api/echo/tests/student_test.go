package tests

import (
	"context"
	"net/http"
	"testing"

	"github.com/pkg/errors"

	"github.com/dottech/backend/core/student"
	"github.com/dottech/backend/core/user"
)

func fPtr(f float64) *float64 { return &f }

func Test_studentApi_query(t *testing.T) {
	resetDB()

	std1, stdUsr := createStudent(t, "Ann", "Lee", "ann.lee@test.cd", "pw123456", 20)
	std2, _ := createStudent(t, "Bob", "Rey", "bob.rey@test.cd", "pw123456", 22)
	_, tchUsr := createTeacher(t, "John", "Keating", "keating@test.cd", "pw123456")

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Teacher required", token: getToken(t, stdUsr), wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
		{
			name: "Get all (newest first)", token: getToken(t, tchUsr), wantCode: http.StatusOK,
			wantData: marchallList(t, std2, std1),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		tt.path = "/v1/students"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_studentApi_retrieve(t *testing.T) {
	resetDB()

	std1, stdUsr1 := createStudent(t, "Ann", "Lee", "ann.lee@test.cd", "pw123456", 20)
	std2, _ := createStudent(t, "Bob", "Rey", "bob.rey@test.cd", "pw123456", 22)
	_, tchUsr := createTeacher(t, "John", "Keating", "keating@test.cd", "pw123456")

	tests := []httpTest{
		{name: "Auth required", path: "/v1/students/" + std1.ID, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Teacher gets any", path: "/v1/students/" + std1.ID, token: getToken(t, tchUsr),
			wantCode: http.StatusOK, wantData: marchallObj(t, std1),
		},
		{
			name: "Teacher gets unknown", path: "/v1/students/lol", token: getToken(t, tchUsr),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{
			name: "Student gets own by profile id", path: "/v1/students/" + std1.ID, token: getToken(t, stdUsr1),
			wantCode: http.StatusOK, wantData: marchallObj(t, std1),
		},
		{
			name: "Student gets own by credential id", path: "/v1/students/" + stdUsr1.ID, token: getToken(t, stdUsr1),
			wantCode: http.StatusOK, wantData: marchallObj(t, std1),
		},
		{
			name: "Student gets another's", path: "/v1/students/" + std2.ID, token: getToken(t, stdUsr1),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
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

func Test_studentApi_update(t *testing.T) {
	resetDB()

	std1, stdUsr1 := createStudent(t, "Ann", "Lee", "ann.lee@test.cd", "pw123456", 20)
	std2, _ := createStudent(t, "Bob", "Rey", "bob.rey@test.cd", "pw123456", 22)
	_, tchUsr := createTeacher(t, "John", "Keating", "keating@test.cd", "pw123456")

	iPtr := func(i int) *int { return &i }

	// permission & validation failures leave the record untouched
	tests := []httpTest{
		{name: "Auth required", path: "/v1/students/" + std1.ID, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Student updates another's", path: "/v1/students/" + std2.ID, token: getToken(t, stdUsr1),
			body:     marchallObj(t, student.UpdateStudent{FirstName: "Hax"}),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "invalid email", path: "/v1/students/" + std1.ID, token: getToken(t, stdUsr1),
			body:     marchallObj(t, map[string]string{"email": "lol"}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"email": "email must be a valid email address"}),
		},
		{
			name: "underage", path: "/v1/students/" + std1.ID, token: getToken(t, stdUsr1),
			body:     marchallObj(t, student.UpdateStudent{Age: iPtr(17)}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"age": "age must be 18 or greater"}),
		},
		{
			name: "email taken", path: "/v1/students/" + std1.ID, token: getToken(t, stdUsr1),
			body:     marchallObj(t, map[string]string{"email": std2.Email}),
			wantCode: http.StatusConflict, wantData: marchallObj(t, map[string]string{"email": "a user with this email already exists"}),
		},
		{
			name: "Teacher updates unknown", path: "/v1/students/lol", token: getToken(t, tchUsr),
			body:     marchallObj(t, student.UpdateStudent{FirstName: "Hax"}),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPut

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	got, err := stdSvc.GetByID(context.Background(), std1.ID)
	if err != nil {
		t.Fatalf("GetByID(): %v", err)
	}
	if want := marchallObj(t, std1); !bytesEq(t, marchallObj(t, got), want) {
		t.Errorf("failed! record changed: %+v", got)
	}

	t.Run("Student updates own name (partial)", func(t *testing.T) {
		body := marchallObj(t, map[string]string{"firstName": "Anna"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/students/"+std1.ID, getToken(t, stdUsr1), body)
		app.ServeHTTP(rec, req)

		std1.FirstName = "Anna"
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, std1)}, rec)
	})

	t.Run("Student updates own email (cascades to credential)", func(t *testing.T) {
		body := marchallObj(t, map[string]string{"email": "anna.lee@test.cd"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/students/"+std1.ID, getToken(t, stdUsr1), body)
		app.ServeHTTP(rec, req)

		std1.Email = "anna.lee@test.cd"
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, std1)}, rec)

		usr, err := usrSvc.GetByEmail(context.Background(), "anna.lee@test.cd")
		if err != nil {
			t.Fatalf("GetByEmail(): %v", err)
		}
		if usr.ID != stdUsr1.ID {
			t.Errorf("failed! credential id = %v; want %v", usr.ID, stdUsr1.ID)
		}
		if _, err = usrSvc.GetByEmail(context.Background(), "ann.lee@test.cd"); errors.Cause(err) != user.ErrNotFound {
			t.Errorf("failed! old email still resolves; err = %v", err)
		}
	})

	t.Run("Teacher updates any", func(t *testing.T) {
		body := marchallObj(t, student.UpdateStudent{Age: iPtr(23)})
		req, rec := newAuthRequest(http.MethodPut, "/v1/students/"+std2.ID, getToken(t, tchUsr), body)
		app.ServeHTTP(rec, req)

		std2.Age = 23
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, std2)}, rec)
	})
}

func Test_studentApi_updateMarks(t *testing.T) {
	resetDB()

	std1, stdUsr1 := createStudent(t, "Ann", "Lee", "ann.lee@test.cd", "pw123456", 20)
	std2, _ := createStudent(t, "Bob", "Rey", "bob.rey@test.cd", "pw123456", 22)
	_, tchUsr := createTeacher(t, "John", "Keating", "keating@test.cd", "pw123456")

	t.Run("Auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodPut, "/v1/students/"+std1.ID+"/marks")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)
	})

	t.Run("Teacher grades a student", func(t *testing.T) {
		marks := student.Marks{Mathematics: fPtr(90), Science: fPtr(85.5)}
		req, rec := newAuthRequest(http.MethodPut, "/v1/students/"+std1.ID+"/marks", getToken(t, tchUsr), marchallObj(t, marks))
		app.ServeHTTP(rec, req)

		std1.Marks = marks
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, std1)}, rec)
	})

	t.Run("Grading replaces the whole record", func(t *testing.T) {
		marks := student.Marks{English: fPtr(70)}
		req, rec := newAuthRequest(http.MethodPut, "/v1/students/"+std1.ID+"/marks", getToken(t, tchUsr), marchallObj(t, marks))
		app.ServeHTTP(rec, req)

		// mathematics and science scores are gone
		std1.Marks = marks
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, std1)}, rec)
	})

	t.Run("Score out of range", func(t *testing.T) {
		marks := student.Marks{Mathematics: fPtr(150)}
		req, rec := newAuthRequest(http.MethodPut, "/v1/students/"+std1.ID+"/marks", getToken(t, tchUsr), marchallObj(t, marks))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"mathematics": "mathematics must be 100 or less"}),
		}, rec)

		got, err := stdSvc.GetByID(context.Background(), std1.ID)
		if err != nil {
			t.Fatalf("GetByID(): %v", err)
		}
		if !bytesEq(t, marchallObj(t, got.Marks), marchallObj(t, std1.Marks)) {
			t.Errorf("failed! marks changed: %+v", got.Marks)
		}
	})

	t.Run("Negative score", func(t *testing.T) {
		marks := student.Marks{Biology: fPtr(-5)}
		req, rec := newAuthRequest(http.MethodPut, "/v1/students/"+std1.ID+"/marks", getToken(t, tchUsr), marchallObj(t, marks))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"biology": "biology must be 0 or greater"}),
		}, rec)
	})

	t.Run("Student grades own record regardless of path id", func(t *testing.T) {
		marks := student.Marks{Chemistry: fPtr(60)}
		req, rec := newAuthRequest(http.MethodPut, "/v1/students/"+std2.ID+"/marks", getToken(t, stdUsr1), marchallObj(t, marks))
		app.ServeHTTP(rec, req)

		// std1's record is graded, not std2's
		std1.Marks = marks
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, std1)}, rec)

		got, err := stdSvc.GetByID(context.Background(), std2.ID)
		if err != nil {
			t.Fatalf("GetByID(): %v", err)
		}
		if got.Marks != (student.Marks{}) {
			t.Errorf("failed! std2 marks = %+v; want all unset", got.Marks)
		}
	})

	t.Run("Teacher grades unknown", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/students/lol/marks", getToken(t, tchUsr), marchallObj(t, student.Marks{}))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)}, rec)
	})
}

func Test_studentApi_destroy(t *testing.T) {
	resetDB()

	std1, stdUsr1 := createStudent(t, "Ann", "Lee", "ann.lee@test.cd", "pw123456", 20)
	_, tchUsr := createTeacher(t, "John", "Keating", "keating@test.cd", "pw123456")

	t.Run("Auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodDelete, "/v1/students/"+std1.ID)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)
	})

	t.Run("Teacher required", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/students/"+std1.ID, getToken(t, stdUsr1))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)}, rec)

		if _, err := stdSvc.GetByID(context.Background(), std1.ID); err != nil {
			t.Errorf("failed! record gone: %v", err)
		}
	})

	t.Run("Teacher deletes unknown", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/students/lol", getToken(t, tchUsr))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)}, rec)
	})

	t.Run("Teacher deletes a student", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/students/"+std1.ID, getToken(t, tchUsr))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusNoContent)
		}

		// both the profile and the credential are gone
		if _, err := stdSvc.GetByID(context.Background(), std1.ID); errors.Cause(err) != student.ErrNotFound {
			t.Errorf("failed! profile still resolves; err = %v", err)
		}
		if _, err := usrSvc.GetByID(context.Background(), stdUsr1.ID); errors.Cause(err) != user.ErrNotFound {
			t.Errorf("failed! credential still resolves; err = %v", err)
		}

		// logging in with the deleted account fails
		body := marchallObj(t, map[string]string{"email": "ann.lee@test.cd", "password": "pw123456"})
		req, rec = newRequest(http.MethodPost, "/v1/auth/login", body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, httpErr{Error: "user not found"})}, rec)
	})
}

func bytesEq(t *testing.T, b1, b2 []byte) bool {
	ok, err := jsonBytesEqual(b1, b2)
	if err != nil {
		t.Fatalf("jsonBytesEqual(): %v", err)
	}
	return ok
}
