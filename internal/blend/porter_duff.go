package blend

func clearColor(_, _ Color) Color { return Color{} }

func copySrc(s, _ Color) Color { return s }

func sourceOver(s, d Color) Color {
	k := 1 - s.A
	return Color{R: s.R + d.R*k, G: s.G + d.G*k, B: s.B + d.B*k, A: s.A + d.A*k}
}

func destinationOver(s, d Color) Color { return sourceOver(d, s) }

func sourceIn(s, d Color) Color { return s.Scale(d.A) }

func destinationIn(s, d Color) Color { return d.Scale(s.A) }

func sourceOut(s, d Color) Color { return s.Scale(1 - d.A) }

func destinationOut(s, d Color) Color { return d.Scale(1 - s.A) }

func sourceAtop(s, d Color) Color {
	ks, kd := d.A, 1-s.A
	return Color{
		R: s.R*ks + d.R*kd,
		G: s.G*ks + d.G*kd,
		B: s.B*ks + d.B*kd,
		A: d.A,
	}
}

func destinationAtop(s, d Color) Color {
	ks, kd := 1-d.A, s.A
	return Color{
		R: s.R*ks + d.R*kd,
		G: s.G*ks + d.G*kd,
		B: s.B*ks + d.B*kd,
		A: s.A,
	}
}

func xor(s, d Color) Color {
	ks, kd := 1-d.A, 1-s.A
	return Color{
		R: s.R*ks + d.R*kd,
		G: s.G*ks + d.G*kd,
		B: s.B*ks + d.B*kd,
		A: s.A*ks + d.A*kd,
	}
}

func plusLighter(s, d Color) Color {
	return Color{
		R: clampUnit(s.R + d.R),
		G: clampUnit(s.G + d.G),
		B: clampUnit(s.B + d.B),
		A: clampUnit(s.A + d.A),
	}
}

// plusDarker is linear burn generalized to translucent colors.
func plusDarker(s, d Color) Color {
	a := s.A + d.A - s.A*d.A
	burn := func(sc, dc float32) float32 {
		return clampUnit(a - ((d.A - dc) + (s.A - sc)))
	}
	return Color{R: burn(s.R, d.R), G: burn(s.G, d.G), B: burn(s.B, d.B), A: a}
}
