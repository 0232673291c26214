package tracker

// CO2PerKWh is the UK grid emission factor in kg CO2 per kWh
const CO2PerKWh = 0.207074

// EstimateCO2e previews the kg CO2e the tracker will record for an entry.
// Appliance coefficients are kWh, so the grid factor applies; transport and
// food coefficients are already CO2e per unit.
func EstimateCO2e(kind Kind, quantity, coefficient float64) float64 {
	switch kind {
	case KindAppliance:
		return quantity * coefficient * CO2PerKWh
	case KindTransport, KindFood:
		return quantity * coefficient
	}
	return 0
}

// Estimate previews the emissions of the form as currently filled in. ok is
// false until the quantity is valid and a coefficient is known.
func (f Form) Estimate() (kg float64, ok bool) {
	opt, found := f.SelectedOption()
	if !found {
		return 0, false
	}
	qty, err := ParseQuantity(f.Kind, f.Value(f.Kind.QuantityField()))
	if err != nil {
		return 0, false
	}
	coef, hasCoef := opt.Coefficient, opt.HasCoefficient
	if f.Kind == KindAppliance {
		entry, err := BuildEntry("", f)
		if err != nil {
			return 0, false
		}
		coef, hasCoef = entry.Coefficient, entry.HasCoefficient
	}
	if !hasCoef {
		return 0, false
	}
	return EstimateCO2e(f.Kind, qty, coef), true
}
