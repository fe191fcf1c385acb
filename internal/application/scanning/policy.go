package scanning

// Policy parametriza la estrictez del motor por composición (no herencia):
// un único validador configurado por struct, en lugar de variantes encadenadas.
type Policy struct {
	// SingleDestination exige que toda línea comparta el destino de la
	// transferencia al momento de finalizar.
	SingleDestination bool
	// EnforceLotTracking exige lote en productos rastreados por lote/serie.
	EnforceLotTracking bool
}

// DefaultPolicy es la variante estricta coherente: destino único y lote
// obligatorio en productos rastreados.
func DefaultPolicy() Policy {
	return Policy{SingleDestination: true, EnforceLotTracking: true}
}
