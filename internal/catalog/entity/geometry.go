package entity

import "time"

// Geometry columns keep the literal labels of the normative tables.

// GeometryBase links a geometry row to its tool.
type GeometryBase struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ToolID    int64     `json:"tool_id" gorm:"not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MillingCutterGeometry is a row of geometry_milling_cutters.
type MillingCutterGeometry struct {
	GeometryBase
	D               *float64 `json:"D,omitempty" gorm:"column:D"`
	L               *float64 `json:"L,omitempty" gorm:"column:L"`
	Z               *int     `json:"z,omitempty" gorm:"column:z"`
	R               *float64 `json:"r,omitempty" gorm:"column:r"`
	Phi             *float64 `json:"φ,omitempty" gorm:"column:φ"`
	Gamma           *float64 `json:"γ,omitempty" gorm:"column:γ"`
	Lambda          *float64 `json:"λ,omitempty" gorm:"column:λ"`
	Tolerance       *string  `json:"Допуск,omitempty" gorm:"column:Допуск;size:16"`
	Material        *string  `json:"Материал,omitempty" gorm:"column:Материал;size:32"`
	CutterType      *string  `json:"Тип_фрезы,omitempty" gorm:"column:Тип_фрезы;size:64"`
	CuttingPartType *string  `json:"Тип_режущей_части,omitempty" gorm:"column:Тип_режущей_части;size:64"`
	Tooth           *string  `json:"Зуб,omitempty" gorm:"column:Зуб;size:16"`
	AccuracyClass   *string  `json:"Класс_точности,omitempty" gorm:"column:Класс_точности;size:8"`
	Number          *int     `json:"Номер,omitempty" gorm:"column:Номер"`
	Module          *float64 `json:"Модуль,omitempty" gorm:"column:Модуль"`
	Execution       *string  `json:"Исполнение,omitempty" gorm:"column:Исполнение;size:32"`
}

func (MillingCutterGeometry) TableName() string {
	return "geometry_milling_cutters"
}

// AxialColumns are shared by drills, countersinks and reamers.
type AxialColumns struct {
	D         *float64 `json:"D,omitempty" gorm:"column:D"`
	L         *float64 `json:"L,omitempty" gorm:"column:L"`
	Z         *int     `json:"z,omitempty" gorm:"column:z"`
	R         *float64 `json:"r,omitempty" gorm:"column:r"`
	Phi       *float64 `json:"φ,omitempty" gorm:"column:φ"`
	Gamma     *float64 `json:"γ,omitempty" gorm:"column:γ"`
	Lambda    *float64 `json:"λ,omitempty" gorm:"column:λ"`
	Tolerance *string  `json:"Допуск,omitempty" gorm:"column:Допуск;size:16"`
	Material  *string  `json:"Материал,omitempty" gorm:"column:Материал;size:32"`
	Taper     *string  `json:"Конус,omitempty" gorm:"column:Конус;size:32"`
	Execution *string  `json:"Исполнение,omitempty" gorm:"column:Исполнение;size:32"`
}

type DrillGeometry struct {
	GeometryBase
	AxialColumns
}

func (DrillGeometry) TableName() string {
	return "geometry_drills"
}

type CountersinkGeometry struct {
	GeometryBase
	AxialColumns
	HoleType *string `json:"Отверстие,omitempty" gorm:"column:Отверстие;size:32"`
}

func (CountersinkGeometry) TableName() string {
	return "geometry_countersinks"
}

type ReamerGeometry struct {
	GeometryBase
	AxialColumns
	HoleType *string `json:"Отверстие,omitempty" gorm:"column:Отверстие;size:32"`
}

func (ReamerGeometry) TableName() string {
	return "geometry_reamers"
}

type TurningCutterGeometry struct {
	GeometryBase
	L              *float64 `json:"L,omitempty" gorm:"column:L"`
	B              *float64 `json:"B,omitempty" gorm:"column:B"`
	H              *float64 `json:"H,omitempty" gorm:"column:H"`
	R              *float64 `json:"r,omitempty" gorm:"column:r"`
	Phi            *float64 `json:"φ,omitempty" gorm:"column:φ"`
	Gamma          *float64 `json:"γ,omitempty" gorm:"column:γ"`
	Lambda         *float64 `json:"λ,omitempty" gorm:"column:λ"`
	Tolerance      *string  `json:"Допуск,omitempty" gorm:"column:Допуск;size:16"`
	Material       *string  `json:"Материал,omitempty" gorm:"column:Материал;size:32"`
	Z              *int     `json:"z,omitempty" gorm:"column:z"`
	Holder         *string  `json:"Державка,omitempty" gorm:"column:Державка;size:32"`
	Load           *string  `json:"Нагрузка,omitempty" gorm:"column:Нагрузка;size:32"`
	ComplexProfile *bool    `json:"Сложный_профиль,omitempty" gorm:"column:Сложный_профиль"`
	Execution      *string  `json:"Исполнение,omitempty" gorm:"column:Исполнение;size:32"`
}

func (TurningCutterGeometry) TableName() string {
	return "geometry_turning_cutters"
}

type BroachGeometry struct {
	GeometryBase
	Pitch         *float64 `json:"Шаг,omitempty" gorm:"column:Шаг"`
	Inclination   *float64 `json:"Угол_наклона,omitempty" gorm:"column:Угол_наклона"`
	TeethSection  *int     `json:"Зубьев_в_секции,omitempty" gorm:"column:Зубьев_в_секции"`
	FeedPerTooth  *float64 `json:"Подача_на_зуб,omitempty" gorm:"column:Подача_на_зуб"`
	WorkingLength *float64 `json:"Длина_рабочей_части,omitempty" gorm:"column:Длина_рабочей_части"`
	Execution     *string  `json:"Исполнение,omitempty" gorm:"column:Исполнение;size:32"`
}

func (BroachGeometry) TableName() string {
	return "geometry_broaches"
}
