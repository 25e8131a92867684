package model

// Estatisticas agrega contagens e médias da plataforma
type Estatisticas struct {
	MediaAvaliacoes     float64 `json:"media_avaliacoes"`
	MediaLivrosPorClube float64 `json:"media_livros_por_clube"`
	TotalUsuarios       int64   `json:"total_usuarios"`
	TotalClubes         int64   `json:"total_clubes"`
	TotalLivros         int64   `json:"total_livros"`
	TotalAvaliacoes     int64   `json:"total_avaliacoes"`
}
