package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Renders reproduce the catalog designations byte for byte: the
// dimension separator is the Cyrillic "х", numbers are formatted
// minimally ("57", "3.5"), and the steel grade suffix appears only for
// non-default grades. Label returns the short designation, Detail the
// long form carrying masses where the family has them; String aliases
// Label on every entity.

// formatNumber renders a table value without trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func steelSuffix(grade string) string {
	if grade != DefaultSteelGrade {
		return "-" + grade
	}
	return ""
}

// Label returns the short pipe designation.
func (p *Pipe) Label() string {
	return fmt.Sprintf("Труба %s %sх%s", p.Standard, formatNumber(p.Diameter), formatNumber(p.Thickness))
}

// Detail returns the full pipe designation with per-meter and total mass.
func (p *Pipe) Detail() string {
	return fmt.Sprintf("Труба %s %sх%s длиной %sм, масса 1м трубы %s кг, масса всей трубы: %s",
		p.Standard, formatNumber(p.Diameter), formatNumber(p.Thickness), formatNumber(p.Length),
		formatNumber(p.MassPerMeter), formatNumber(p.Mass))
}

func (p *Pipe) String() string {
	return p.Label()
}

// Label returns the short elbow designation. Elbows of kind 1 carry the
// kind digit; kind 2 designations omit it.
func (e *Elbow) Label() string {
	if e.Kind == 1 {
		return fmt.Sprintf("Отвод %d-%d-%sх%s%s %s",
			e.Angle, e.Kind, formatNumber(e.Diameter), formatNumber(e.Thickness), steelSuffix(e.SteelGrade), e.Standard)
	}
	return fmt.Sprintf("Отвод %d-%sх%s%s %s",
		e.Angle, formatNumber(e.Diameter), formatNumber(e.Thickness), steelSuffix(e.SteelGrade), e.Standard)
}

// Detail returns the full elbow designation with DN and masses.
func (e *Elbow) Detail() string {
	return fmt.Sprintf("Отвод %d-%d-%sх%s (DN %s)%s %s, масса одного отвода: %s кг, общая масса: %s кг",
		e.Angle, e.Kind, formatNumber(e.Diameter), formatNumber(e.Thickness), formatNumber(e.Nominal),
		steelSuffix(e.SteelGrade), e.Standard, formatNumber(e.MassPerUnit), formatNumber(e.TotalMass))
}

func (e *Elbow) String() string {
	return e.Label()
}

// Label returns the short tee designation. Execution 2 omits the
// execution prefix; equal run and branch diameters collapse to a single
// dimension pair.
func (t *Tee) Label() string {
	prefix := ""
	if t.Execution != 2 {
		prefix = formatNumber(t.Execution) + "-"
	}
	if t.Diameter == t.BranchDiameter {
		return fmt.Sprintf("Тройник %s%sх%s%s %s",
			prefix, formatNumber(t.Diameter), formatNumber(t.Thickness), steelSuffix(t.SteelGrade), t.Standard)
	}
	return fmt.Sprintf("Тройник %s%sх%s-%sх%s%s %s",
		prefix, formatNumber(t.Diameter), formatNumber(t.Thickness),
		formatNumber(t.BranchDiameter), formatNumber(t.BranchThickness), steelSuffix(t.SteelGrade), t.Standard)
}

// Detail returns the full tee designation with DN and masses.
func (t *Tee) Detail() string {
	return fmt.Sprintf("Тройник %s-%sх%s (DN %s)%s %s, масса одного тройника: %s кг, общая масса: %s кг",
		formatNumber(t.Execution), formatNumber(t.Diameter), formatNumber(t.BranchDiameter),
		formatNumber(t.Nominal), steelSuffix(t.SteelGrade), t.Standard,
		formatNumber(t.MassPerUnit), formatNumber(t.TotalMass))
}

func (t *Tee) String() string {
	return t.Label()
}

// Label returns the short transition designation.
func (tr *Transition) Label() string {
	return fmt.Sprintf("Переход %sх%s%s %s",
		formatNumber(tr.Diameter), formatNumber(tr.BranchDiameter), steelSuffix(tr.SteelGrade), tr.Standard)
}

// Detail returns the full transition designation with DN and masses.
func (tr *Transition) Detail() string {
	return fmt.Sprintf("Переход %sх%s (DN %s)%s %s, масса одного перехода: %s кг, общая масса: %s кг",
		formatNumber(tr.Diameter), formatNumber(tr.BranchDiameter), formatNumber(tr.Nominal),
		steelSuffix(tr.SteelGrade), tr.Standard, formatNumber(tr.MassPerUnit), formatNumber(tr.TotalMass))
}

func (tr *Transition) String() string {
	return tr.Label()
}

// Label returns the support designation.
func (s *Support) Label() string {
	return fmt.Sprintf("Опора %s-%s-%s-%s %s",
		formatNumber(s.Diameter), s.Type, s.Execution, s.SteelGrade, s.Standard)
}

// Detail returns the descriptive support form.
func (s *Support) Detail() string {
	return fmt.Sprintf("Опора типа %s исполнения %s из стали %s для трубопровода Dн=%sмм",
		s.Type, s.Execution, s.SteelGrade, formatNumber(s.Diameter))
}

func (s *Support) String() string {
	return s.Label()
}

// Label returns the short valve designation.
func (a *ArmatureAssembly) Label() string {
	return fmt.Sprintf("Задвижка %s DN%d PN%s", a.Type, a.DN, formatNumber(a.PN))
}

// Detail returns the bill of materials for the valve assembly: the
// wedge-gate valve description, companion flanges, gaskets, the
// optional test-gasket note, the optional rotary plug, and fasteners.
func (a *ArmatureAssembly) Detail() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Задвижка клиновая фланцевая исполнения В,\n")
	fmt.Fprintf(&b, "DN%d мм, PN %s МПа, сталь 20Л\n", a.DN, formatNumber(a.PN))
	b.WriteString("Класс герметичности А, климатическое\n")
	b.WriteString("исполнение УХЛ1 по ГОСТ 15150-69,\n")
	b.WriteString("рабочая среда - вода, температура рабочей среды\n")
	fmt.Fprintf(&b, "%d°C - %d°C, расчетная температура %d°C\n", a.TMin, a.TMax, a.TDesign)
	b.WriteString("в комплекте:\n")
	fmt.Fprintf(&b, "- ответные фланцы %d-%d-11-1-В-Ст20-IV ГОСТ 33259-2015 - %d шт.\n",
		a.DN, int(a.PN*10), a.FlangeCount)
	fmt.Fprintf(&b, "- прокладки спирально-навивные термостойкие СНП-Д-1-1-%d-%s ГОСТ Р 52376-2005 - %d шт.\n",
		a.DN, formatNumber(a.PN), a.GasketCount)
	if a.AdditionalGaskets > 0 {
		fmt.Fprintf(&b, "(доп. прокладки в кол-ве %d шт. для проведения испытаний и запуска системы)\n", a.AdditionalGaskets)
	}
	if !a.OmitRotaryPlug {
		fmt.Fprintf(&b, "- заглушка поворотная 1-%d-4,0 сталь 20 по АТК 26-18-5-93 - 1 шт.\n", a.DN)
	}
	b.WriteString("- крепеж")
	return b.String()
}

func (a *ArmatureAssembly) String() string {
	return a.Label()
}
