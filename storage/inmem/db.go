// Package inmemdb provides in-memory repositories. They back the test suites
// and local runs that do not have a MongoDB deployment at hand.
package inmemdb

import (
	"sync"

	"github.com/dottech/backend/core/student"
	"github.com/dottech/backend/core/teacher"
	"github.com/dottech/backend/core/user"
)

type DB struct {
	mutex    sync.RWMutex
	users    map[string]*user.User
	students map[string]*student.Student
	teachers map[string]*teacher.Teacher
}

func NewDB() *DB {
	return &DB{
		users:    make(map[string]*user.User),
		students: make(map[string]*student.Student),
		teachers: make(map[string]*teacher.Teacher),
	}
}

// Reset drops all records; tests call it between cases.
func (db *DB) Reset() {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.users = make(map[string]*user.User)
	db.students = make(map[string]*student.Student)
	db.teachers = make(map[string]*teacher.Teacher)
}
