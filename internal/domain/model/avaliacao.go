package model

const (
	NotaMinima = 1
	NotaMaxima = 5
)

// Avaliacao é a nota (1 a 5) de um usuário para um livro
type Avaliacao struct {
	ID         uint    `gorm:"primaryKey"`
	Comentario *string `gorm:"type:text"`
	Nota       int     `gorm:"not null;check:chk_avaliacoes_nota,nota >= 1 AND nota <= 5"`
	IDLivro    uint    `gorm:"column:id_livro;not null;index"`
	IDUsuario  uint    `gorm:"column:id_usuario;not null;index"`
}

func (Avaliacao) TableName() string {
	return "avaliacoes"
}

// NotaValida indica se a nota está no intervalo aceito
func NotaValida(nota int) bool {
	return nota >= NotaMinima && nota <= NotaMaxima
}
