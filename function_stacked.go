package odr2gml

// StackedFunction evaluates all member functions at the same position and
// combines the results with a pure combiner. Its domain is the intersection
// of the member domains.
type StackedFunction struct {
	members  []UnivariateFunction
	combiner func(values []float64) float64
	domain   Range
}

// NewStackedFunction returns stacked function with given combiner
func NewStackedFunction(members []UnivariateFunction, combiner func(values []float64) float64) (*StackedFunction, error) {
	if len(members) == 0 {
		return nil, newIllegalState("stacking of zero functions")
	}
	domain := members[0].Domain()
	for _, member := range members[1:] {
		intersection, ok := domain.Intersection(member.Domain())
		if !ok {
			return nil, newIllegalState("member domains do not intersect")
		}
		domain = intersection
	}
	return &StackedFunction{members: members, combiner: combiner, domain: domain}, nil
}

// NewStackedSum returns stacked function summing up all member values
func NewStackedSum(members ...UnivariateFunction) (*StackedFunction, error) {
	return NewStackedFunction(members, func(values []float64) float64 {
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		return sum
	})
}

// Domain returns the range of arguments the function is defined on
func (f *StackedFunction) Domain() Range {
	return f.domain
}

// Value evaluates the function at given position
func (f *StackedFunction) Value(x float64) (float64, error) {
	if !f.domain.Contains(x) {
		return 0, newOutOfDomain(x, f.domain)
	}
	values := make([]float64, len(f.members))
	for i, member := range f.members {
		v, err := member.Value(x)
		if err != nil {
			return 0, err
		}
		values[i] = v
	}
	return f.combiner(values), nil
}

// Slope evaluates the first derivative at given position by applying the
// combiner to the member slopes. Exact for linear combiners such as the sum.
func (f *StackedFunction) Slope(x float64) (float64, error) {
	if !f.domain.Contains(x) {
		return 0, newOutOfDomain(x, f.domain)
	}
	slopes := make([]float64, len(f.members))
	for i, member := range f.members {
		v, err := member.Slope(x)
		if err != nil {
			return 0, err
		}
		slopes[i] = v
	}
	return f.combiner(slopes), nil
}

// ValueFuzzy evaluates the function accepting positions within given
// tolerance of the domain endpoints, clamping them onto the domain
func (f *StackedFunction) ValueFuzzy(x, tolerance float64) (float64, error) {
	if !f.domain.FuzzyContains(x, tolerance) {
		return 0, newOutOfDomain(x, f.domain)
	}
	clamped := f.domain.Clamp(x)
	values := make([]float64, len(f.members))
	for i, member := range f.members {
		v, err := member.ValueFuzzy(clamped, tolerance)
		if err != nil {
			return 0, err
		}
		values[i] = v
	}
	return f.combiner(values), nil
}
