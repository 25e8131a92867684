package model

import "time"

// Usuario é um membro da plataforma. SenhaHash guarda apenas o hash bcrypt.
type Usuario struct {
	ID         uint        `gorm:"primaryKey"`
	Nome       string      `gorm:"size:50;not null"`
	Email      string      `gorm:"uniqueIndex;size:100;not null"`
	SenhaHash  string      `gorm:"column:senha_hash;size:512;not null"`
	CreatedAt  time.Time   `gorm:"autoCreateTime"`
	UpdatedAt  time.Time   `gorm:"autoUpdateTime"`
	Clubes     []Clube     `gorm:"foreignKey:IDUsuarioCriador;constraint:OnDelete:CASCADE"`
	Avaliacoes []Avaliacao `gorm:"foreignKey:IDUsuario;constraint:OnDelete:CASCADE"`
}

// TableName define o nome da tabela
func (Usuario) TableName() string {
	return "usuarios"
}
