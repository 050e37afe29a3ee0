package utils

//Populates bool slice with specified value
func FillSliceBool(values []bool, value bool) {
	for i := range values {
		values[i] = value
	}
}

//Searches int slice for specified integer
func ContainsInt(q int, vals []int) bool {
	for _, val := range vals {
		if val == q {
			return true
		}
	}
	return false
}

//Returns number of on bits
func CountTrue(values []bool) int {
	count := 0
	for _, val := range values {
		if val {
			count++
		}
	}
	return count
}

//Returns "on" indices
func OnIndices(s []bool) []int {
	result := make([]int, 0, len(s)/4)
	for idx, val := range s {
		if val {
			result = append(result, idx)
		}
	}
	return result
}

// Returns complement of s and t
func Complement(s []int, t []int) []int {
	result := make([]int, 0, len(s))
	for _, val := range s {
		if !ContainsInt(val, t) {
			result = append(result, val)
		}
	}
	return result
}

//Helper for unit tests where int literals are easier
// to read
func Make1DBool(values []int) []bool {
	result := make([]bool, len(values))
	for i, val := range values {
		result[i] = val == 1
	}
	return result
}
