package domain

import (
	"time"
)

// Account roles. The schema default is RoleUser; the bootstrap path only
// ever creates the default admin.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type SysUser struct {
	ID        int64     `json:"id,string" form:"id"`
	Username  string    `gorm:"uniqueIndex;size:50" json:"username" form:"username"`
	Password  string    `json:"-" form:"-"` // bcrypt hash, never compared in plaintext
	Role      string    `gorm:"size:16;default:user" json:"role" form:"role"`
	Status    string    `gorm:"size:16" json:"status" form:"status"`
	LastLogin time.Time `json:"last_login" form:"last_login"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (SysUser) TableName() string {
	return "sys_user"
}

type SysAuthLog struct {
	ID       int64     `json:"id,string"`
	Username string    `json:"username"`
	Ip       string    `json:"ip"`
	Action   string    `json:"action"` // login / logout
	OptTime  time.Time `json:"opt_time"`
}

// TableName Specify table name
func (SysAuthLog) TableName() string {
	return "sys_auth_log"
}
