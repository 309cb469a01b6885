package models

import (
	"encoding/json"
	"time"
)

// User roles. Role is fixed at signup; there is no migration path between them.
const (
	RoleMentor = "mentor"
	RoleMentee = "mentee"
)

// User represents a platform user, either a mentor or a mentee.
type User struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Password string `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	Name     string `json:"name" gorm:"type:varchar(100)"`
	Role     string `json:"role" gorm:"type:varchar(10)"`
	Bio      string `json:"bio,omitempty" gorm:"type:text"`

	// Skills is the mentor's skill list serialized as a JSON array in a text
	// column. Use SkillList/SetSkillList instead of touching it directly.
	Skills string `json:"-" gorm:"type:text"`

	ProfileImage     []byte `json:"-"`
	ProfileImageName string `json:"-" gorm:"type:varchar(255)"`
	ProfileImageType string `json:"-" gorm:"type:varchar(64)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SkillList decodes the serialized skills column. Returns nil when no skills
// have been set; a malformed value decodes to an empty list.
func (u *User) SkillList() []string {
	if u.Skills == "" {
		return nil
	}
	var skills []string
	if err := json.Unmarshal([]byte(u.Skills), &skills); err != nil {
		return []string{}
	}
	return skills
}

// SetSkillList serializes the given skills into the skills column.
func (u *User) SetSkillList(skills []string) error {
	encoded, err := json.Marshal(skills)
	if err != nil {
		return err
	}
	u.Skills = string(encoded)
	return nil
}

// HasSkill reports whether the skill is an exact member of the user's skill list.
func (u *User) HasSkill(skill string) bool {
	for _, s := range u.SkillList() {
		if s == skill {
			return true
		}
	}
	return false
}
