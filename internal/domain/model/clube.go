package model

// Clube pertence ao usuário que o criou e agrupa livros
type Clube struct {
	ID               uint    `gorm:"primaryKey"`
	Nome             string  `gorm:"size:100;not null"`
	Descricao        *string `gorm:"size:255"`
	IDUsuarioCriador uint    `gorm:"column:id_usuario_criador;not null;index"`
	Livros           []Livro `gorm:"foreignKey:IDClube;constraint:OnDelete:CASCADE"`
}

func (Clube) TableName() string {
	return "clubes"
}
