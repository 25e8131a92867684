package model

type Livro struct {
	ID         uint        `gorm:"primaryKey"`
	Titulo     string      `gorm:"size:200;not null"`
	Autor      string      `gorm:"size:100;not null"`
	IDClube    uint        `gorm:"column:id_clube;not null;index"`
	Avaliacoes []Avaliacao `gorm:"foreignKey:IDLivro;constraint:OnDelete:CASCADE"`
}

func (Livro) TableName() string {
	return "livros"
}
