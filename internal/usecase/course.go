package usecase

// Mapa estático trigger -> id do curso. Toda trigger reconhecida aponta
// para exatamente um curso, ou para nenhum.
var courseMap = map[string]int{
	"COURSE1": 1,
	"COURSE2": 2,
}

// CourseID devolve o id do curso associado à trigger já normalizada.
// O segundo retorno é false quando a trigger não vende curso nenhum.
func CourseID(trigger string) (int, bool) {
	id, ok := courseMap[trigger]
	return id, ok
}
