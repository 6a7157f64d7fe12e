package dispatch

// OpID names an operation in the kernel table.
type OpID string

// Kernel-backed operations.
const (
	OpAbs        OpID = "abs"
	OpAcos       OpID = "acos"
	OpAcosh      OpID = "acosh"
	OpAdd        OpID = "add"
	OpAngle      OpID = "angle"
	OpAsin       OpID = "asin"
	OpAsinh      OpID = "asinh"
	OpAtan       OpID = "atan"
	OpAtanh      OpID = "atanh"
	OpBitwiseNot OpID = "bitwise_not"
	OpCeil       OpID = "ceil"
	OpClamp      OpID = "clamp"
	OpClampMax   OpID = "clamp_max"
	OpClampMin   OpID = "clamp_min"
	OpConj       OpID = "conj"
	OpCopy       OpID = "copy"
	OpCos        OpID = "cos"
	OpCosh       OpID = "cosh"
	OpDigamma    OpID = "digamma"
	OpErf        OpID = "erf"
	OpErfc       OpID = "erfc"
	OpErfinv     OpID = "erfinv"
	OpExp        OpID = "exp"
	OpExpm1      OpID = "expm1"
	OpFloor      OpID = "floor"
	OpFrac       OpID = "frac"
	OpLgamma     OpID = "lgamma"
	OpLog        OpID = "log"
	OpLog10      OpID = "log10"
	OpLog1p      OpID = "log1p"
	OpLog2       OpID = "log2"
	OpLogicalNot OpID = "logical_not"
	OpMul        OpID = "mul"
	OpNeg        OpID = "neg"
	OpPolygamma  OpID = "polygamma"
	OpPow        OpID = "pow"
	OpReciprocal OpID = "reciprocal"
	OpRound      OpID = "round"
	OpRsqrt      OpID = "rsqrt"
	OpSigmoid    OpID = "sigmoid"
	OpSign       OpID = "sign"
	OpSin        OpID = "sin"
	OpSinh       OpID = "sinh"
	OpSqrt       OpID = "sqrt"
	OpTan        OpID = "tan"
	OpTanh       OpID = "tanh"
	OpTrunc      OpID = "trunc"
)
