package taqi

// 塔棋（bashni）：跳棋的走法几何 + 叠棋的吃法。走法/吃法的射线规则与
// checkers 完全一致（都按顶子算归属、按整柱算占格），差别全在应用层：
// 被跳柱只失去顶子，顶子钻到跳子柱底下。生成侧直接复用跳棋几何。

func genBashniRawCaptures(p *Position, chain *Chain, moves *[]Move) {
	genDraughtsRawCaptures(p, chain, moves)
}

func genBashniQuiet(p *Position, moves *[]Move) {
	genDraughtsQuiet(p, moves)
}
