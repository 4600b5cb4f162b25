package vec

import "fmt"

// Vec2 представляет координаты чанка на горизонтальной сетке (X, Z)
type Vec2 struct {
	X, Z int
}

// String возвращает строковое представление в формате "x,z"
func (v Vec2) String() string {
	return fmt.Sprintf("%d,%d", v.X, v.Z)
}

// Chebyshev возвращает расстояние Чебышёва max(|dx|, |dz|)
func (v Vec2) Chebyshev(other Vec2) int {
	dx := abs(v.X - other.X)
	dz := abs(v.Z - other.Z)
	if dx > dz {
		return dx
	}
	return dz
}

// FloorDiv делит с округлением вниз, в том числе для отрицательных чисел.
// -1 / 16 даёт -1, а не 0.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// FloorMod возвращает неотрицательный остаток для положительного b
func FloorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
