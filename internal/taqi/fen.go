package taqi

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// 类 FEN 编码。棋盘行用“/”隔开，空位数字压缩；单子直接写字母，柱子用
// 方括号括起来、底→顶排列。后面依次是走子方、易位权、过路兵格、劫哈希、
// 死局计数。第一个 token 是规则变体（checkers 的延迟移除模式带 +d 后缀）。
// 例：`lasca [mM]3... w - - - 4:2`

var letterToPieceType = map[rune]PieceType{
	'm': PieceMan,     // 兵（跳棋）
	'o': PieceOfficer, // 官
	'p': PiecePawn,
	'n': PieceKnight,
	'b': PieceBishop,
	'r': PieceRook,
	'q': PieceQueen,
	'k': PieceKing,
}

var pieceTypeToLetter = map[PieceType]rune{
	PieceMan:     'm',
	PieceOfficer: 'o',
	PiecePawn:    'p',
	PieceKnight:  'n',
	PieceBishop:  'b',
	PieceRook:    'r',
	PieceQueen:   'q',
	PieceKing:    'k',
}

var rulesetNames = map[Ruleset]string{
	RulesetLasca:      "lasca",
	RulesetCheckers:   "checkers",
	RulesetBashni:     "bashni",
	RulesetChess:      "chess",
	RulesetTowerChess: "towerchess",
}

// ParseRuleset 解析变体名；checkers 可带 +d 表示延迟移除
func ParseRuleset(name string) (Ruleset, RemovalMode, error) {
	removal := RemoveImmediate
	if strings.HasSuffix(name, "+d") {
		removal = RemoveDeferred
		name = strings.TrimSuffix(name, "+d")
	}
	for rs, n := range rulesetNames {
		if n == name {
			return rs, removal, nil
		}
	}
	return 0, 0, ErrInvalidFEN
}

func pieceToChar(p Piece) rune {
	base, ok := pieceTypeToLetter[p.Type()]
	if !ok || p == 0 {
		return '.'
	}
	if p.Side() == White {
		return unicode.ToUpper(base)
	}
	return base
}

func charToPiece(ch rune) (Piece, bool) {
	base := unicode.ToLower(ch)
	pt, ok := letterToPieceType[base]
	if !ok {
		return 0, false
	}
	side := Black
	if unicode.IsUpper(ch) {
		side = White
	}
	return makePiece(side, pt), true
}

func (p *Position) Encode() string {
	var sb strings.Builder

	name := rulesetNames[p.Ruleset]
	if p.Ruleset == RulesetCheckers && p.Removal == RemoveDeferred {
		name += "+d"
	}
	sb.WriteString(name)
	sb.WriteByte(' ')

	size := p.Board.Size
	for r := 0; r < size; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < size; c++ {
			st := p.Board.Squares[p.Board.indexOf(r, c)]
			if len(st) == 0 {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			if len(st) == 1 {
				sb.WriteRune(pieceToChar(st[0]))
				continue
			}
			sb.WriteByte('[')
			for _, pc := range st {
				sb.WriteRune(pieceToChar(pc))
			}
			sb.WriteByte(']')
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	castle := ""
	for i, ch := range "KQkq" {
		if p.Castling[i/2][i%2] {
			castle += string(ch)
		}
	}
	if castle == "" {
		castle = "-"
	}
	sb.WriteString(castle)

	sb.WriteByte(' ')
	if p.EPSquare >= 0 {
		sb.WriteString(strconv.Itoa(p.EPSquare))
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(p.EPPawn))
	} else {
		sb.WriteByte('-')
	}

	sb.WriteByte(' ')
	if p.KoHash != 0 {
		sb.WriteString(strconv.FormatUint(p.KoHash, 16))
	} else {
		sb.WriteByte('-')
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.QuietPlies))
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(p.NoManPlies))

	return sb.String()
}

var ErrInvalidFEN = errors.New("invalid FEN")

func DecodePosition(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 3 {
		return nil, ErrInvalidFEN
	}

	rs, removal, err := ParseRuleset(parts[0])
	if err != nil {
		return nil, err
	}

	pos := &Position{
		Ruleset:  rs,
		Removal:  removal,
		EPSquare: -1,
		EPPawn:   -1,
	}
	pos.Board.Size = boardSizeFor(rs)
	size := pos.Board.Size

	rows := strings.Split(parts[1], "/")
	if len(rows) != size {
		return nil, ErrInvalidFEN
	}
	for r := 0; r < size; r++ {
		c := 0
		runes := []rune(rows[r])
		for i := 0; i < len(runes); i++ {
			ch := runes[i]
			if c > size {
				return nil, ErrInvalidFEN
			}
			switch {
			case ch >= '1' && ch <= '8':
				c += int(ch - '0')
			case ch == '[':
				var st Stack
				i++
				for i < len(runes) && runes[i] != ']' {
					pc, ok := charToPiece(runes[i])
					if !ok {
						return nil, ErrInvalidFEN
					}
					st = append(st, pc)
					i++
				}
				if i >= len(runes) || len(st) == 0 || c >= size {
					return nil, ErrInvalidFEN
				}
				pos.Board.Squares[pos.Board.indexOf(r, c)] = st
				c++
			default:
				pc, ok := charToPiece(ch)
				if !ok || c >= size {
					return nil, ErrInvalidFEN
				}
				pos.Board.Squares[pos.Board.indexOf(r, c)] = Stack{pc}
				c++
			}
		}
		if c != size {
			return nil, ErrInvalidFEN
		}
	}

	switch parts[2] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return nil, ErrInvalidFEN
	}

	if len(parts) > 3 && parts[3] != "-" {
		for i, ch := range "KQkq" {
			if strings.ContainsRune(parts[3], ch) {
				pos.Castling[i/2][i%2] = true
			}
		}
	}

	if len(parts) > 4 && parts[4] != "-" {
		ep := strings.SplitN(parts[4], ",", 2)
		if len(ep) != 2 {
			return nil, ErrInvalidFEN
		}
		if pos.EPSquare, err = strconv.Atoi(ep[0]); err != nil {
			return nil, ErrInvalidFEN
		}
		if pos.EPPawn, err = strconv.Atoi(ep[1]); err != nil {
			return nil, ErrInvalidFEN
		}
		// 过路格在棋盘外的局面走一步就会越界，解码时直接打回
		n := pos.Board.NumSquares()
		if pos.EPSquare < 0 || pos.EPSquare >= n || pos.EPPawn < 0 || pos.EPPawn >= n {
			return nil, ErrInvalidFEN
		}
	}

	if len(parts) > 5 && parts[5] != "-" {
		if pos.KoHash, err = strconv.ParseUint(parts[5], 16, 64); err != nil {
			return nil, ErrInvalidFEN
		}
	}

	if len(parts) > 6 {
		cnt := strings.SplitN(parts[6], ":", 2)
		if len(cnt) == 2 {
			pos.QuietPlies, _ = strconv.Atoi(cnt[0])
			pos.NoManPlies, _ = strconv.Atoi(cnt[1])
		}
	}

	pos.Hash = pos.CalculateHash()
	return pos, nil
}
